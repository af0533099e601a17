// Package persistence holds the session codecs used by stores that keep
// sessions as opaque blobs.
//
// A Codec can be layered: NewEncryptedCodec seals the output of another
// codec with AES-GCM, so answers written to a shared backend stay private.
package persistence
