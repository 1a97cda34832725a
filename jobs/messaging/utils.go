package main

import "time"

type MessageCounter struct {
	Success  int
	Failed   int
	Duration int64
	start    time.Time
}

func InitMessageCounter() *MessageCounter {
	return &MessageCounter{
		start: time.Now(),
	}
}

func (c *MessageCounter) IncreaseCounter(success bool) {
	if success {
		c.Success++
	} else {
		c.Failed++
	}
}

func (c *MessageCounter) Stop() {
	c.Duration = time.Now().Unix() - c.start.Unix()
}
