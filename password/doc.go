// Package password hashes and verifies operator credentials with Argon2id.
//
// Hashes use the PHC string format:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// Verification reads cost parameters from the hash itself, so hashes produced with
// older settings keep verifying; [Hasher.NeedsRehash] reports when they fall behind.
package password
