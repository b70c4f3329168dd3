package rdb

import (
	"encoding/json"
	"time"
)

// EnvironmentRecord is the RDB persistence model for domain Environment.
// Table name: environments
type EnvironmentRecord struct {
	ID        string    `gorm:"primaryKey;type:text;not null"`
	Name      string    `gorm:"type:text;not null"`
	Driver    string    `gorm:"type:text;not null"`
	Region    string    `gorm:"type:text"`
	Messaging string    `gorm:"type:text"` // JSON encoded model.Messaging
	Storage   string    `gorm:"type:text"` // JSON encoded model.Storage
	Secrets   string    `gorm:"type:text"` // JSON encoded model.SecretSync
	Telemetry string    `gorm:"type:text"` // JSON encoded model.Telemetry
	Settings  string    `gorm:"type:text"` // JSON encoded map[string]string
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (EnvironmentRecord) TableName() string { return "environments" }

// ClusterRecord persistence model
type ClusterRecord struct {
	ID            string    `gorm:"primaryKey;type:text;not null"`
	Name          string    `gorm:"type:text;not null"`
	EnvironmentID string    `gorm:"type:text;not null"` // references Environment
	Existing      bool      `gorm:"not null"`
	Version       string    `gorm:"type:text"`
	NodeCount     int       `gorm:"not null"`
	NodeSize      string    `gorm:"type:text"`
	Domain        string    `gorm:"type:text"`
	Ingress       string    `gorm:"type:text"` // JSON encoded model.ClusterIngress
	Settings      string    `gorm:"type:text"` // JSON encoded map[string]string
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

func (ClusterRecord) TableName() string { return "clusters" }

// ServiceRecord persistence model
type ServiceRecord struct {
	ID             string    `gorm:"primaryKey;type:text;not null"`
	Name           string    `gorm:"type:text;not null"`
	ClusterID      string    `gorm:"type:text;not null"` // references Cluster
	Image          string    `gorm:"type:text"`
	Port           int       `gorm:"not null"`
	Replicas       int       `gorm:"not null"`
	ServiceAccount string    `gorm:"type:text"`
	Env            string    `gorm:"type:text"` // JSON encoded map[string]string
	Resources      string    `gorm:"type:text"` // JSON encoded map[string]string
	Ingress        string    `gorm:"type:text"` // JSON encoded model.ServiceIngress
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (ServiceRecord) TableName() string { return "services" }

// encodeJSON marshals v into a text column value; nil becomes the empty string.
func encodeJSON(v any) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// decodeJSON unmarshals a text column into out; empty input is a no-op.
func decodeJSON(s string, out any) {
	if s == "" {
		return
	}
	_ = json.Unmarshal([]byte(s), out)
}
