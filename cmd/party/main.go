package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/jfrog/jfrog-client-go/utils/log"
	"github.com/party-go/party/artifactory/commands"
	"github.com/party-go/party/artifactory/utils"
	"github.com/party-go/party/party-client-go/services/artifactory"
	"github.com/party-go/party/party-client-go/services/artifactory/utils/auth"
	"github.com/party-go/party/utils/config"
	"github.com/urfave/cli"
)

const partyVersion = "1.5.0"

func main() {
	log.SetLogger(log.NewLogger(log.INFO, nil))
	if err := newApp().Run(os.Args); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "party"
	app.Usage = "Lightweight client for the Artifactory API."
	app.Version = partyVersion
	app.Flags = globalFlags()
	app.Commands = getCommands()
	app.Before = setLogLevel
	app.CommandNotFound = suggestCommands
	return app
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{Name: "url", Usage: "[Optional] Artifactory API url, e.g. https://acme.jfrog.io/artifactory/api."},
		cli.StringFlag{Name: "user", Usage: "[Optional] Artifactory username."},
		cli.StringFlag{Name: "password", Usage: "[Optional] Artifactory password, in clear text."},
		cli.StringFlag{Name: "api-key", Usage: "[Optional] Artifactory API key."},
		cli.StringFlag{Name: "server-id", Usage: "[Optional] Read the server details from the JFrog CLI configuration."},
		cli.StringFlag{Name: "config", Usage: "[Optional] YAML configuration file. Defaults to $" + config.EnvConfig + " or ~/" + config.DefaultConfigFile + "."},
		cli.StringFlag{Name: "certs-path", Usage: "[Optional] Directory of trusted certificates."},
		cli.BoolFlag{Name: "insecure-tls", Usage: "[Default: false] Skip TLS certificates verification."},
		cli.BoolFlag{Name: "dry-run", Usage: "[Default: false] Log the requests instead of sending them."},
		cli.IntFlag{Name: "threads", Value: 1, Usage: "[Default: 1] Number of parallel requests of the pattern search."},
		cli.StringFlag{Name: "log-level", Value: "INFO", Usage: "[Default: INFO] DEBUG, INFO, WARN or ERROR."},
		cli.StringFlag{Name: "format", Value: string(commands.Json), Usage: "[Default: json] Output format, json or csv."},
	}
}

func getCommands() []cli.Command {
	return []cli.Command{
		{
			Name:      "find",
			Usage:     "Find artifacts by file name.",
			ArgsUsage: "<file name>",
			Action:    findCmd,
		},
		{
			Name:      "find-props",
			Usage:     "Find artifacts by properties.",
			ArgsUsage: "<key1=value1;key2=value2>",
			Action:    findPropsCmd,
		},
		{
			Name:      "find-pattern",
			Usage:     "Find artifacts by a partial file name, globs allowed.",
			ArgsUsage: "<pattern>",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "repo", Usage: "[Optional] Search this repository only."},
				cli.StringFlag{Name: "repo-type", Usage: "[Optional] local, remote or virtual."},
				cli.IntFlag{Name: "max-depth", Value: artifactory.DefaultMaxDepth, Usage: "[Default: 10] Number of directory levels to search."},
			},
			Action: findPatternCmd,
		},
		{
			Name:      "props",
			Usage:     "Get the properties of an artifact.",
			ArgsUsage: "<artifact storage url> [property names, comma separated]",
			Action:    propsCmd,
		},
		{
			Name:      "set-props",
			Usage:     "Set properties on an artifact.",
			ArgsUsage: "<artifact storage url> <key1=value1;key2=value2>",
			Action:    setPropsCmd,
		},
		{
			Name:      "delete-props",
			Usage:     "Delete properties from an artifact.",
			ArgsUsage: "<artifact storage url> <property names, comma separated>",
			Action:    deletePropsCmd,
		},
		{
			Name:      "lookup",
			Usage:     "Find an artifact by properties and show its properties.",
			ArgsUsage: "<key1=value1;key2=value2> [property names, comma separated]",
			Action:    lookupCmd,
		},
		{
			Name:      "file-info",
			Usage:     "Show the storage details of an artifact.",
			ArgsUsage: "<repo/path>",
			Action:    fileInfoCmd,
		},
		{
			Name:      "file-stats",
			Usage:     "Show the download statistics of an artifact.",
			ArgsUsage: "<repo/path>",
			Action:    fileStatsCmd,
		},
		{
			Name:   "storage-info",
			Usage:  "Show the storage summary.",
			Action: storageInfoCmd,
		},
		{
			Name:  "repos",
			Usage: "List repository keys.",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "type", Usage: "[Optional] local, remote or virtual."},
			},
			Action: reposCmd,
		},
		{
			Name:      "aql",
			Usage:     "Run an AQL query described by a JSON or YAML spec file.",
			ArgsUsage: "<spec file>",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "spec-vars", Usage: "[Optional] Spec variables, e.g. \"key1=value1;key2=value2\"."},
			},
			Action: aqlCmd,
		},
	}
}

func setLogLevel(c *cli.Context) error {
	var level log.LevelType
	switch strings.ToUpper(c.GlobalString("log-level")) {
	case "DEBUG":
		level = log.DEBUG
	case "INFO":
		level = log.INFO
	case "WARN":
		level = log.WARN
	case "ERROR":
		level = log.ERROR
	default:
		return cli.NewExitError("Unknown log level: "+c.GlobalString("log-level"), 1)
	}
	log.SetLogger(log.NewLogger(level, nil))
	return nil
}

func suggestCommands(c *cli.Context, command string) {
	fmt.Fprintf(c.App.Writer, "'%s' is not a party command. See 'party --help'.\n", command)
	var suggestions []string
	for _, cmd := range c.App.Commands {
		if levenshtein.ComputeDistance(command, cmd.Name) <= 2 {
			suggestions = append(suggestions, cmd.Name)
		}
	}
	if len(suggestions) > 0 {
		fmt.Fprintln(c.App.Writer, "\nThe most similar commands are:\n\t"+strings.Join(suggestions, "\n\t"))
	}
}

// createConfiguration merges flags, environment, JFrog CLI server and configuration file, in that precedence.
func createConfiguration(c *cli.Context) (*commands.CommandConfiguration, error) {
	details := &config.ArtifactoryDetails{
		Url:              c.GlobalString("url"),
		User:             c.GlobalString("user"),
		Password:         auth.EncodePassword(c.GlobalString("password")),
		ApiKey:           c.GlobalString("api-key"),
		CertificatesPath: c.GlobalString("certs-path"),
		InsecureTls:      c.GlobalBool("insecure-tls"),
	}
	details.Merge(config.FromEnv())
	if c.GlobalIsSet("server-id") {
		serverDetails, err := config.FromJfrogCli(c.GlobalString("server-id"))
		if err != nil {
			return nil, err
		}
		details.Merge(serverDetails)
	}
	var fileDetails *config.ArtifactoryDetails
	var err error
	if c.GlobalIsSet("config") {
		fileDetails, err = config.ReadConfigFile(c.GlobalString("config"))
	} else {
		fileDetails, err = config.ReadDefaultConfigFile()
	}
	if err != nil {
		return nil, err
	}
	details.Merge(fileDetails)

	return &commands.CommandConfiguration{
		ArtDetails: details,
		ServiceOptions: utils.ServiceOptions{
			DryRun:  c.GlobalBool("dry-run"),
			Threads: c.GlobalInt("threads"),
		},
	}, nil
}

func outputFormat(c *cli.Context) (commands.OutputFormat, error) {
	format := commands.OutputFormat(strings.ToLower(c.GlobalString("format")))
	if !format.IsValid() {
		return "", cli.NewExitError("Unknown output format: "+c.GlobalString("format"), 1)
	}
	return format, nil
}

func printResult(c *cli.Context, result interface{}) error {
	format, err := outputFormat(c)
	if err != nil {
		return err
	}
	return commands.PrintResult(c.App.Writer, result, format)
}

// printObject prints single object results, which only have a JSON form.
func printObject(c *cli.Context, result interface{}) error {
	return commands.PrintResult(c.App.Writer, result, commands.Json)
}

func requireArgs(c *cli.Context, min, max int) error {
	if c.NArg() < min || c.NArg() > max {
		return cli.NewExitError(fmt.Sprintf("Wrong number of arguments for '%s'. See 'party %s --help'.", c.Command.Name, c.Command.Name), 1)
	}
	return nil
}

func splitNames(names string) []string {
	var result []string
	for _, name := range strings.Split(names, ",") {
		if name = strings.TrimSpace(name); name != "" {
			result = append(result, name)
		}
	}
	return result
}

func findCmd(c *cli.Context) error {
	if err := requireArgs(c, 1, 1); err != nil {
		return err
	}
	conf, err := createConfiguration(c)
	if err != nil {
		return err
	}
	result, err := commands.FindByName(c.Args().Get(0), conf)
	if err != nil {
		return err
	}
	return printObject(c, result.Results)
}

func findPropsCmd(c *cli.Context) error {
	if err := requireArgs(c, 1, 1); err != nil {
		return err
	}
	conf, err := createConfiguration(c)
	if err != nil {
		return err
	}
	result, err := commands.FindByProps(utils.ParseKeyValues(c.Args().Get(0)), conf)
	if err != nil {
		return err
	}
	return printResult(c, result)
}

func findPatternCmd(c *cli.Context) error {
	if err := requireArgs(c, 1, 1); err != nil {
		return err
	}
	conf, err := createConfiguration(c)
	if err != nil {
		return err
	}
	params := artifactory.PatternSearchParams{
		Pattern:  c.Args().Get(0),
		Repo:     c.String("repo"),
		RepoType: artifactory.RepoType(c.String("repo-type")),
		MaxDepth: c.Int("max-depth"),
	}
	result, err := commands.FindByPattern(params, conf)
	if err != nil {
		return err
	}
	return printResult(c, result)
}

func propsCmd(c *cli.Context) error {
	if err := requireArgs(c, 1, 2); err != nil {
		return err
	}
	conf, err := createConfiguration(c)
	if err != nil {
		return err
	}
	result, err := commands.GetProps(c.Args().Get(0), splitNames(c.Args().Get(1)), conf)
	if err != nil {
		return err
	}
	return printResult(c, result)
}

func setPropsCmd(c *cli.Context) error {
	if err := requireArgs(c, 2, 2); err != nil {
		return err
	}
	conf, err := createConfiguration(c)
	if err != nil {
		return err
	}
	return commands.SetProps(c.Args().Get(0), utils.ParseKeyValues(c.Args().Get(1)), conf)
}

func deletePropsCmd(c *cli.Context) error {
	if err := requireArgs(c, 2, 2); err != nil {
		return err
	}
	conf, err := createConfiguration(c)
	if err != nil {
		return err
	}
	return commands.DeleteProps(c.Args().Get(0), splitNames(c.Args().Get(1)), conf)
}

func lookupCmd(c *cli.Context) error {
	if err := requireArgs(c, 1, 2); err != nil {
		return err
	}
	conf, err := createConfiguration(c)
	if err != nil {
		return err
	}
	result, err := commands.Lookup(utils.ParseKeyValues(c.Args().Get(0)), splitNames(c.Args().Get(1)), conf)
	if err != nil {
		return err
	}
	return printResult(c, result)
}

func fileInfoCmd(c *cli.Context) error {
	if err := requireArgs(c, 1, 1); err != nil {
		return err
	}
	conf, err := createConfiguration(c)
	if err != nil {
		return err
	}
	result, err := commands.FileInfo(c.Args().Get(0), conf)
	if err != nil {
		return err
	}
	return printObject(c, result)
}

func fileStatsCmd(c *cli.Context) error {
	if err := requireArgs(c, 1, 1); err != nil {
		return err
	}
	conf, err := createConfiguration(c)
	if err != nil {
		return err
	}
	result, err := commands.FileStats(c.Args().Get(0), conf)
	if err != nil {
		return err
	}
	return printObject(c, result)
}

func storageInfoCmd(c *cli.Context) error {
	if err := requireArgs(c, 0, 0); err != nil {
		return err
	}
	conf, err := createConfiguration(c)
	if err != nil {
		return err
	}
	result, err := commands.StorageInfo(conf)
	if err != nil {
		return err
	}
	return printObject(c, result)
}

func reposCmd(c *cli.Context) error {
	if err := requireArgs(c, 0, 0); err != nil {
		return err
	}
	conf, err := createConfiguration(c)
	if err != nil {
		return err
	}
	result, err := commands.Repos(artifactory.RepoType(c.String("type")), conf)
	if err != nil {
		return err
	}
	return printResult(c, result)
}

func aqlCmd(c *cli.Context) error {
	if err := requireArgs(c, 1, 1); err != nil {
		return err
	}
	conf, err := createConfiguration(c)
	if err != nil {
		return err
	}
	result, err := commands.Aql(c.Args().Get(0), utils.ParseKeyValues(c.String("spec-vars")), conf)
	if err != nil {
		return err
	}
	return printObject(c, result)
}
