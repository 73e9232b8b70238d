// Package protocol implements the binary wire format the live route server
// speaks over its WebSocket.
//
// The server sends batches of patches that show, hide and scroll the views
// managed by live routes. The client sends events back: scroll positions
// reported by a view and navigation requests.
//
// Every message travels in a Frame with a 4-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (2 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// Payloads are built from varints (protobuf style, ZigZag for signed values)
// and length-prefixed UTF-8 strings.
//
// Patches frame:
//
//	[seq:uvarint][count:uvarint]{[op:byte][hid:string][op fields...]}*
//
// Event:
//
//	[seq:uvarint][type:byte][hid:string][type fields...]
package protocol
