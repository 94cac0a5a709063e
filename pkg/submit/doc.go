// Package submit delivers validated form values to a remote endpoint.
package submit
