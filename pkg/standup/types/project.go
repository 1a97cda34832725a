package types

import "go.mongodb.org/mongo-driver/bson/primitive"

type Project struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	TenantID primitive.ObjectID   `bson:"tenantId" json:"tenantId"`
	Name     string               `bson:"name" json:"name"`
	Users    []primitive.ObjectID `bson:"users" json:"users"`
	IsActive bool                 `bson:"isActive" json:"isActive"`
}

type Tenant struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name string             `bson:"name" json:"name"`
}
