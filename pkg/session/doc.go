/*
Package session serializes the turns of each user.

Transports receive updates concurrently. The engine reads a session, computes
the next one and writes it back; the Manager makes that sequence atomic per
user while letting different users proceed in parallel.
*/
package session
