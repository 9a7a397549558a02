/*
Package zether implements the account model confidential token: every
account holds one encrypted running balance and transfers move ciphertexts
between them, guarded by zero knowledge transfer proofs.

On top of the plain transfer the package implements the one-time lock
contract. Creating a lock debits the owner's balance by the encrypted
committed value; settle credits the receiver, rollback credits the owner
back. Because settlement always pays the full committed value to the
receiver, locks carry no explicit settle or rollback specification.

Ciphertext arithmetic and proof checking are behind the Cipher and Verifier
interfaces so the concrete cryptography stays external.
*/
package zether
