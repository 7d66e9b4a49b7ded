package entity

import "time"

// LogMessage is a log line persisted to the database.
type LogMessage struct {
	Time      time.Time `json:"time" bson:"time"`
	Level     string    `json:"level" bson:"level"`
	Category  string    `json:"category" bson:"category"`
	Text      string    `json:"text" bson:"text"`
	Error     string    `json:"error,omitempty" bson:"error,omitempty"`
	RequestId string    `json:"request_id,omitempty" bson:"request_id,omitempty"`
}

func (l *LogMessage) DataType() string {
	return "log"
}
