// Package config defines the format-agnostic model of the optional settings
// files read at startup, along with the Loader interface that concrete
// formats implement. The HCL implementation lives in hcl_adapter.
//
// Settings only carry defaults. Command-line flags always take precedence
// over anything loaded here.
package config
