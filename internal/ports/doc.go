// Package ports defines the seams between the invoker and the outside world.
package ports
