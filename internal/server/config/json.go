package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/profilekeeper/internal/flagx"
	"github.com/dmitrijs2005/profilekeeper/internal/timex"
)

// JsonConfig mirrors Config for unmarshalling. Pointer fields tell "absent"
// apart from a zero value, so a partial file only overrides what it names.
type JsonConfig struct {
	EndpointAddrHTTP *string         `json:"endpoint_addr_http"`
	DatabaseDSN      *string         `json:"database_dsn"`
	BlobBackend      *string         `json:"blob_backend"`
	S3RootUser       *string         `json:"s3_root_user"`
	S3RootPassword   *string         `json:"s3_root_password"`
	S3Bucket         *string         `json:"s3_bucket"`
	S3Region         *string         `json:"s3_region"`
	S3BaseEndpoint   *string         `json:"s3_base_endpoint"`
	MongoURI         *string         `json:"mongo_uri"`
	MongoDatabase    *string         `json:"mongo_database"`
	MongoCollection  *string         `json:"mongo_collection"`
	StoreTimeout     *timex.Duration `json:"store_timeout"`
	MaxUploadSize    *int64          `json:"max_upload_size"`
	HashPasswords    *bool           `json:"hash_passwords"`
	LogLevel         *string         `json:"log_level"`
}

// parseJson overlays values from the file given by -c/-config. Nothing
// happens when the flag is absent; an unreadable or malformed file panics.
func parseJson(config *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.BlobBackend, c.BlobBackend)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.MongoURI, c.MongoURI)
	setString(&config.MongoDatabase, c.MongoDatabase)
	setString(&config.MongoCollection, c.MongoCollection)
	setString(&config.LogLevel, c.LogLevel)

	if c.StoreTimeout != nil {
		config.StoreTimeout = c.StoreTimeout.Duration
	}
	if c.MaxUploadSize != nil {
		config.MaxUploadSize = *c.MaxUploadSize
	}
	if c.HashPasswords != nil {
		config.HashPasswords = *c.HashPasswords
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
