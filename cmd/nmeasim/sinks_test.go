package main

import (
	"testing"
	"time"

	"github.com/goblimey/nmeasim/config"
	"github.com/stretchr/testify/require"
)

func TestParseOutputSpecParsesEachSinkKind(t *testing.T) {
	o, err := parseOutputSpec("tcp,listen_addr=:10110,max_clients=8,client_timeout=30s,send_timeout=200ms")
	require.NoError(t, err)
	require.Equal(t, config.Output{
		Type:          "tcp",
		ListenAddr:    ":10110",
		MaxClients:    8,
		ClientTimeout: 30 * time.Second,
		SendTimeout:   200 * time.Millisecond,
	}, o)

	o, err = parseOutputSpec("udp,host=239.1.1.1,port=10111,broadcast=true")
	require.NoError(t, err)
	require.Equal(t, config.Output{Type: "udp", Host: "239.1.1.1", Port: 10111, Broadcast: true}, o)

	o, err = parseOutputSpec("file,path=out.log,rotation_size_mb=10,max_files=2,auto_flush=true")
	require.NoError(t, err)
	require.Equal(t, config.Output{
		Type: "file", Path: "out.log", RotationSizeMB: 10, MaxFiles: 2, AutoFlush: true,
	}, o)
}

func TestParseOutputSpecRejectsUnknownTypeAndFields(t *testing.T) {
	_, err := parseOutputSpec("")
	require.Error(t, err)

	_, err = parseOutputSpec("tcp,bogus=1")
	require.Error(t, err)

	_, err = parseOutputSpec("tcp,listen_addr")
	require.Error(t, err)
}
