package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fmnx/veth/config"
)

func TestRejectsMalformedRemoteBeforeStart(t *testing.T) {
	rootCmd.SetArgs([]string{"tap0", "127.0.0.1:9001", "-c", "not-an-address"})

	err := rootCmd.Execute()
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestRequiresDeviceAndLocalAddress(t *testing.T) {
	rootCmd.SetArgs([]string{"tap0"})

	assert.Error(t, rootCmd.Execute())
}
