// Package deps checks for the external programs mkvnorm shells out to.
package deps
