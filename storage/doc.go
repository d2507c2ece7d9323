// Package storage supplies the binary audio attached to batch items.
//
// A BinaryStore answers "which bytes does item i carry under field f".
// MemoryStore holds bytes already in memory (e.g. decoded from a request
// body); storage/local resolves file references against a base directory
// and storage/s3 resolves object keys against a bucket. Layered chains them.
//
// # Configuration
//
//	storage:
//	  base_path: "./audio"
//	  max_file_size: 104857600
//	  s3:
//	    bucket: "recordings"
//	    region: "eu-west-1"
package storage
