package cmd

import (
	"fmt"
	"runtime"

	"github.com/dablenparty/dablenutil"
	"github.com/spf13/cobra"
)

func newExeNameCmd() *cobra.Command {
	var pkg string

	exeNameCmd := &cobra.Command{
		Use:   "exe-name",
		Short: "Print the platform-specific executable name",
		Long: `Print {package}_{os}_{arch}{suffix} for the platform this binary was built for.

Without --name, the package is dablenutil's own. Examples:
  dablenutil exe-name                 # dablenutil_linux_amd64
  dablenutil exe-name --name myapp    # myapp_linux_amd64`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := dablenutil.ExecutableName()
			if pkg != "" {
				name = dablenutil.FormatExecutableName(pkg, runtime.GOOS, runtime.GOARCH, dablenutil.ExeSuffix)
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), name)
			return err
		},
	}

	exeNameCmd.Flags().StringVarP(&pkg, "name", "n", "", "package name to format instead of this binary's")
	return exeNameCmd
}
