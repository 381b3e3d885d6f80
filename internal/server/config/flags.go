package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/profilekeeper/internal/flagx"
)

// parseFlags overlays Config with command-line flags.
//
//	-a string   HTTP bind address (":8000")
//	-d string   PostgreSQL DSN
//	-k string   blob backend, "s3" or "mongo"
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket
//	-g string   S3 region
//	-e string   S3 base endpoint
//	-m string   Mongo URI
//	-n string   Mongo database
//	-o string   Mongo collection
//	-t int      store call timeout, seconds
//	-l string   log level
//
// Unknown flags are filtered out first, see flagx.FilterArgs.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-d", "-k", "-u", "-p", "-b", "-g", "-e", "-m", "-n", "-o", "-t", "-l",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.BlobBackend, "k", config.BlobBackend, "blob backend (s3|mongo)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.MongoURI, "m", config.MongoURI, "Mongo URI")
	fs.StringVar(&config.MongoDatabase, "n", config.MongoDatabase, "Mongo database")
	fs.StringVar(&config.MongoCollection, "o", config.MongoCollection, "Mongo collection")

	storeTimeout := fs.Int("t", int(config.StoreTimeout.Seconds()), "store call timeout (in seconds)")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.StoreTimeout = time.Duration(*storeTimeout) * time.Second
}
