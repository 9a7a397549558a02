/*
Package pet defines the common interfaces that tie the settlement ledger
together: transactions and messages, handlers and their registry, the
key-value store family with cache-wrapping, and the condition/address
scheme used to derive module-owned accounts.

The execution model is the one supplied by the hosting ledger: every
transaction is delivered against a cache-wrapped store and either commits
all of its writes or none of them. Extensions in x/ build on this to get
multi-contract atomicity without any commit protocol of their own.
*/
package pet
