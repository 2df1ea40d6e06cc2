package utils

import (
	"net"
	"net/http"
	"time"
)

var (
	// GlobalHTTPClient is shared by everything that talks HTTP outside the
	// discordgo session, currently the log webhook.
	GlobalHTTPClient = newHTTPClient()
)

func newHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConnsPerHost:   2,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   15 * time.Second,
	}
}
