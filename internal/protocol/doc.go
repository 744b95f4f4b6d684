// Package protocol implements the binary wire format for produce
// requests.
//
// A frame nests three envelopes, each carrying an explicit big-endian
// length so a reader never scans for delimiters:
//
//	wire frame:       [4B length][request envelope]
//	request envelope: [2B request type][2B topic len][topic][4B partition]
//	                  [4B message len][checksum envelope]
//	checksum envelope:[1B magic][4B CRC-32 of payload][payload]
//
// Encoding is pure: no I/O, no state. Decode reverses Encode exactly and
// verifies every length prefix and the checksum, which backs the
// round-trip tests and dry-run observation.
package protocol
