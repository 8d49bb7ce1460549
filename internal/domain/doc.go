// Package domain holds the error vocabulary shared by the sweep packages.
package domain
