// Package devserver is an in-memory stand-in for the Catalogue Service, used
// for local development and end-to-end tests of the client.
//
// It implements the same four endpoints and envelope shapes as the real
// service: multipart search and upload, listing (newest first) and delete by
// id. Uploaded assets are served under the asset path as <uuid>.<ext>.
//
// Similarity is a 64-bit average hash compared by Hamming distance, which is
// crude but deterministic. Upload, list and delete are limited to loopback
// clients unless LocalAdmin is cleared.
package devserver
