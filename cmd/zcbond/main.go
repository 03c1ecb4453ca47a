// Command zcbond prices a zero-coupon bond under the one-factor Hull-White
// model by Monte Carlo simulation and by the analytic formula.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
