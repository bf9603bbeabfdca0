package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yakychan/KidsFlix/config"
	"github.com/yakychan/KidsFlix/models"
	"github.com/yakychan/KidsFlix/utils"
)

func newURLCmd(v *viper.Viper, configFile *string) *cobra.Command {
	var keys models.UserKeys
	cmd := &cobra.Command{
		Use:   "url",
		Short: "Print the manifest URL to install the addon with the given keys",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, *configFile)
			if err != nil {
				return err
			}
			keys = keys.Normalized()
			if err := keys.Validate(); err != nil {
				return fmt.Errorf("keys: %w", err)
			}
			segment, err := utils.EncodeUserConfig(keys)
			if err != nil {
				return err
			}
			base := cfg.Server.PublicBaseURL
			if base == "" {
				base = "http://localhost:" + strconv.Itoa(cfg.Server.Port)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s/%s/manifest.json\n", base, segment)
			return nil
		},
	}
	cmd.Flags().StringVar(&keys.TMDBKey, "tmdb", "", "TMDB API key (required)")
	cmd.Flags().StringVar(&keys.OMDbKey, "omdb", "", "OMDb API key")
	return cmd
}
