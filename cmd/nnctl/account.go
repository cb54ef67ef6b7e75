package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	nnclient "github.com/vestinel/nnclient"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Query a Nintendo Network account server",
}

var userExistsCmd = &cobra.Command{
	Use:   "user-exists [nnid]",
	Short: "Check whether a Nintendo Network id is registered",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserExists,
}

var agreementsCmd = &cobra.Command{
	Use:   "agreements [country]",
	Short: "Fetch the EULA agreements for a country",
	Args:  cobra.ExactArgs(1),
	RunE:  runAgreements,
}

var timezonesCmd = &cobra.Command{
	Use:   "timezones [country]",
	Short: "Fetch the timezone list for a country",
	Args:  cobra.ExactArgs(1),
	RunE:  runTimezones,
}

var timeCmd = &cobra.Command{
	Use:   "time",
	Short: "Ask the account server for the current time",
	Args:  cobra.NoArgs,
	RunE:  runTime,
}

var mapIDsCmd = &cobra.Command{
	Use:   "map-ids [nnid]...",
	Short: "Convert Nintendo Network ids into PIDs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMapIDs,
}

var agreementVersion string

func init() {
	agreementsCmd.Flags().StringVar(&agreementVersion, "version", "latest", "agreement version to fetch")

	accountCmd.AddCommand(userExistsCmd)
	accountCmd.AddCommand(agreementsCmd)
	accountCmd.AddCommand(timezonesCmd)
	accountCmd.AddCommand(timeCmd)
	accountCmd.AddCommand(mapIDsCmd)
	rootCmd.AddCommand(accountCmd)
}

// accountClient builds a client from the config file; shared setup for each
// account subcommand.
func accountClient() (*nnclient.Client, *nnclient.Logger, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := nnclient.NewLogger(config.LogFile)
	if err != nil {
		return nil, nil, err
	}
	client, err := config.client()
	if err != nil {
		logger.Close()
		return nil, nil, err
	}
	return client, logger, nil
}

func runUserExists(cmd *cobra.Command, args []string) error {
	client, logger, err := accountClient()
	if err != nil {
		return err
	}
	defer logger.Close()

	nnid := nnclient.NNID(args[0])
	logger.Info("checking %s on %s", nnid, client.Host())

	exists, err := client.UserExists(cmd.Context(), nnid)
	if err != nil {
		return err
	}
	if exists {
		fmt.Printf("%s is taken\n", nnid)
	} else {
		fmt.Printf("%s is available\n", nnid)
	}
	return nil
}

func runAgreements(cmd *cobra.Command, args []string) error {
	client, logger, err := accountClient()
	if err != nil {
		return err
	}
	defer logger.Close()

	version := nnclient.LatestAgreement
	if agreementVersion != "latest" {
		parsed, err := strconv.ParseUint(agreementVersion, 10, 16)
		if err != nil {
			return fmt.Errorf("bad agreement version %q: %w", agreementVersion, err)
		}
		version = nnclient.AgreementVersion{Version: uint16(parsed)}
	}

	country := args[0]
	logger.Info("fetching %s agreements for %s", nnclient.AgreementKindEULA, country)

	agreements, err := client.Agreements(cmd.Context(), nnclient.AgreementKindEULA, country, version)
	if err != nil {
		return err
	}

	for _, agreement := range agreements.Agreements {
		fmt.Printf("%s %s v%d (%s)\n", agreement.Country, agreement.Language, uint16(agreement.Version), agreement.LanguageName)
		if agreement.Texts != nil {
			fmt.Printf("  %s\n", agreement.Texts.MainTitle.Text)
		}
	}
	return nil
}

func runTimezones(cmd *cobra.Command, args []string) error {
	client, logger, err := accountClient()
	if err != nil {
		return err
	}
	defer logger.Close()

	config, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	country := args[0]
	logger.Info("fetching timezones for %s", country)

	timezones, err := client.Timezones(cmd.Context(), country, config.Language)
	if err != nil {
		return err
	}

	for _, zone := range timezones.Timezones {
		fmt.Printf("%-32s %s (UTC%+d)\n", zone.Area, zone.Name, zone.UTCOffset/3600)
	}
	return nil
}

func runTime(cmd *cobra.Command, args []string) error {
	client, logger, err := accountClient()
	if err != nil {
		return err
	}
	defer logger.Close()

	serverTime, err := client.Time(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Println(serverTime.Format("2006-01-02 15:04:05 MST"))
	return nil
}

func runMapIDs(cmd *cobra.Command, args []string) error {
	client, logger, err := accountClient()
	if err != nil {
		return err
	}
	defer logger.Close()

	mapped, err := client.MapIDs(cmd.Context(), "user_id", "pid", args)
	if err != nil {
		return err
	}

	for _, id := range mapped.Mapped {
		if id.Out == "" {
			fmt.Printf("%-16s (no match)\n", id.In)
			continue
		}
		fmt.Printf("%-16s %s\n", id.In, id.Out)
	}
	return nil
}
