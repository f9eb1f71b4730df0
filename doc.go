// Package xedi builds UN/EDIFACT messages and publishes them.
//
// A Report accumulates the segments of a delivery status report and composes
// them into a Composed message framed by UNH/UNT. Codecs render composed
// messages (or whole interchanges) as EDIFACT text or JSON, and a Publisher
// hands the encoded payload to a Sink such as adapter/memory or
// adapter/redisstream.
package xedi
