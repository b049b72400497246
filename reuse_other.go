//go:build !unix

package dtp

import "syscall"

func reuseAddrControl(network, address string, c syscall.RawConn) error {
	return nil
}
