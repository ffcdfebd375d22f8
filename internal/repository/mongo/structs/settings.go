package structs

import "go.mongodb.org/mongo-driver/bson/primitive"

type Settings struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	CustodyCurrency string             `bson:"custody_currency"`
	BridgeCurrency  string             `bson:"bridge_currency"`
	PollIntervalSec int                `bson:"poll_interval_sec"`
	OrderMaxWaitSec int                `bson:"order_max_wait_sec"`
	FillsMaxWaitSec int                `bson:"fills_max_wait_sec"`
	FillsMaxRetries int                `bson:"fills_max_retries"`
	Status          string             `bson:"status"`
}
