// Command cornerman is the CLI front end for the cornerman daemon. It
// talks to cornermand over a unix socket and exposes the interactive
// search workflow (open, search, grab) plus daemon lifecycle and
// configuration helpers.
package main
