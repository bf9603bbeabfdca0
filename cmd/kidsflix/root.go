package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yakychan/KidsFlix/config"
)

func newRootCmd() *cobra.Command {
	v := config.New()
	var configFile string

	root := &cobra.Command{
		Use:          "kidsflix",
		Short:        "Kids-safe Stremio catalog addon",
		Long:         "KidsFlix serves child-appropriate movie and series catalogs built from TMDB, filtered by age certifications, genres, synopsis keywords and OMDb ratings.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), v, configFile)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "path to a kidsflix.yaml config file")
	flags.IntP("port", "p", config.DefaultPort, "HTTP listen port")
	flags.String("base-url", "", "public base URL used in poster links, e.g. https://kids.example.com")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	flags.String("log-format", "text", "log format: text or json")
	flags.Bool("strict-neutral", false, "admit neutral-genre titles only with a positive age rating")
	bindFlags(v, root)

	root.AddCommand(newServeCmd(v, &configFile), newVersionCmd(), newURLCmd(v, &configFile))
	return root
}

// bindFlags lets explicitly set flags override file and environment values.
func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	_ = v.BindPFlag("server.port", flags.Lookup("port"))
	_ = v.BindPFlag("server.public_base_url", flags.Lookup("base-url"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = v.BindPFlag("filter.strict_neutral", flags.Lookup("strict-neutral"))
}
