// Package fitdecode implements a streaming decoder for the FIT (Flexible
// and Interoperable Data Transfer) binary file format: the telemetry
// container format used by Garmin and other fitness/outdoor devices.
//
// A Reader pulls one Frame at a time off an io.Reader via Next, so a whole
// activity file never has to be held in memory at once. Frames are
// *FileHeader, *DefinitionMessage, *DataMessage and *Crc; chained files
// (several FIT streams concatenated back to back) are handled
// transparently, each starting a fresh *FileHeader.
//
// The wire-level record layout, local message table, developer field
// registry, compressed-timestamp and component accumulation, and subfield
// resolution all live in the root package. The static catalogue of known
// global messages, fields, enums and components lives in the profile
// subpackage.
package fitdecode
