// Package redisstream provides a Redis Streams sink for xedi.
//
// Sink name: "redis-streams"
//
// Every record becomes one stream entry written with XADD; batches are
// pipelined. Entry fields:
//   - id: record ID, when set
//   - reference: UNH message reference number
//   - type: UNH message type
//   - codec: codec that produced the payload
//   - payload: encoded message bytes
//   - producedAt: unix nanoseconds
//   - meta:<key>: one field per metadata entry
//
// Config keys: addr, username, password, db, tls, tls_server_name,
// max_len_approx.
//
// Example builder usage:
//
//	pub, _ := xedi.NewPublisherBuilder().
//	    WithSink(redisstream.SinkName, map[string]any{
//	        "addr":           "localhost:6379",
//	        "max_len_approx": int64(100000),
//	    }).
//	    Build()
package redisstream
