// Package testutils contains code that is useful in tests.
package testutils

import (
	"math/rand"
	"net"
	"strconv"
)

var allChars = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// CreateRandomString returns a random alphanumeric string of length n.
func CreateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = allChars[rand.Intn(len(allChars))]
	}
	return string(b)
}

// TCPRandomPort returns an available TCP port and a release function. The
// port is held open until the release function is called, so a parallel
// test cannot grab it in between.
func TCPRandomPort() (int, func()) {
	l, err := net.Listen("tcp", "")
	if err != nil {
		panic(err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	return port, func() {
		l.Close()
	}
}

// LocalAddrWithRandomPort returns a loopback host:port with a free port and
// its release function.
func LocalAddrWithRandomPort() (string, func()) {
	port, release := TCPRandomPort()
	return net.JoinHostPort("localhost", strconv.Itoa(port)), release
}
