// Package cli provides the flatauth command-line client.
//
//	flatauth-cli [-a http://127.0.0.1:3000] [-t 5] signup|login [-e email] [-p password]
//
// Values not given as flags are prompted for; the password is read from the
// terminal without echo. The server's reply is printed as-is and the exit
// code is non-zero for any non-2xx status.
package cli
