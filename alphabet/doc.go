// Package alphabet holds the registry of base58 alphabets.
//
// Four variants are supported: bitcoin, monero, flickr and ripple. Codecs built on different
// alphabets are mutually incompatible even though all of them are base 58, so the tables are
// kept byte for byte as published. Monero shares the bitcoin table.
package alphabet
