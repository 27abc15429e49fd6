// Package common contains the core data structures shared by both roles of
// the FreeFocus control channel: the tagged Command/Response message union
// that travels on the wire, and the configuration structures for the server
// (daemon) and client (front-end) sides.
package common
