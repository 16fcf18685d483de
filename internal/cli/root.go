package cli

import (
	"context"
	"io"
)

// cargoSubcommand is the argument cargo passes when run as "cargo bitbake".
const cargoSubcommand = "bitbake"

// NormalizeArgs drops the leading "bitbake" argument cargo inserts when it
// runs cargo-bitbake as an external subcommand.
func NormalizeArgs(args []string) []string {
	if len(args) > 0 && args[0] == cargoSubcommand {
		return args[1:]
	}
	return args
}

// Execute runs the cargo-bitbake CLI with args (without the program name)
// and returns an error if any command fails. Logs are written to logOut.
//
// Example:
//
//	func main() {
//	    if err := cli.Execute(ctx, os.Args[1:], os.Stderr); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute(ctx context.Context, args []string, logOut io.Writer) error {
	c := New(logOut, LogInfo)
	root := c.RootCommand()
	root.SetArgs(NormalizeArgs(args))
	return root.ExecuteContext(ctx)
}
