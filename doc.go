/*

Package argon2 implements version 1.3 of the Argon2 password hashing function
as specified in RFC 9106 and the document

	https://github.com/P-H-C/phc-winner-argon2/blob/master/argon2-specs.pdf

together with the PHC string format used to store Argon2 hashes.

Argon2 comes in three flavors:

Argon2i uses data-independent memory access, making it suitable for hashing secret information such as passwords.

Argon2d uses data-dependent memory access, which is faster and resists time-memory tradeoffs better, but is not suitable for hashing secret information due to potential side-channel attacks.

Argon2id uses data-independent access for the first half of the first pass and data-dependent access afterwards. HashEncode and Hasher use it.

Encoded hashes look like

	$argon2id$v=19$m=65536,t=2,p=1$c29tZXNhbHQ$CTFhFdXPJO1aFaMaO6Mm5c8y7cJHAph8ArZWb2GRPPc

where m is the memory in KiB. Costs carries the memory as its base-2
logarithm, so the string above has MCost 16.

*/
package argon2
