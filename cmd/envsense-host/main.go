//go:build !(rp2040 || rp2350)

// Command envsense-host drives the sensors from a Linux I2C adapter.
package main

import (
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := getRootCmd().Execute(); err != nil {
		log.Fatalln(err)
	}
}
