// Command chatgpt-widgets inspects and resolves widget entrypoints from the
// command line: listing the widgets a directory exposes, previewing the
// synthesized entry documents, and resolving finished HTML from a
// production build's manifest.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	widgets "github.com/gadget-inc/vite-plugin-chatgpt-widgets"
	"github.com/gadget-inc/vite-plugin-chatgpt-widgets/lib/entry"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "chatgpt-widgets",
	Short: "Inspect and resolve ChatGPT widget entrypoints",
	Long: `chatgpt-widgets works with the widget entrypoints exposed by the
vite-plugin-chatgpt-widgets build plugin: list the widgets a directory
exposes, preview the synthesized entry documents, and resolve finished
widget HTML from a production build's manifest.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setLogLevel(viper.GetString("loglevel"))
	},
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the widgets discovered in the widgets directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		found, err := entry.Discover(viper.GetString("dir"))
		if err != nil {
			return err
		}
		if len(found) == 0 {
			logrus.Info("no widgets found")
			return nil
		}
		for _, w := range found {
			fmt.Printf("%s\t%s\n", w.Name, w.SourcePath)
		}
		return nil
	},
}

var htmlCmd = &cobra.Command{
	Use:   "html <name>",
	Short: "Print the synthesized entry document for a widget",
	Long: `Prints the virtual HTML document the plugin serves for a widget,
before any dev-server transforms or production bundling. The module script
src is the widget's virtual entry id.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		html, err := entry.SynthesizeHTML(args[0])
		if err != nil {
			return err
		}
		fmt.Print(html)
		return nil
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [name...]",
	Short: "Resolve finished widget HTML from a production build",
	Long: `Resolves widget HTML through the production manifest. With names,
resolves each named widget; without, discovers the widgets directory and
resolves everything in it. The manifest path is interpreted relative to the
current working directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		mode := widgets.ProdMode{ManifestPath: viper.GetString("manifest")}

		if len(args) == 0 {
			infos, err := widgets.GetWidgets(ctx, viper.GetString("dir"), mode)
			if err != nil {
				return err
			}
			for _, info := range infos {
				printResolved(info.Name, info.Content, string(info.Source))
			}
			return nil
		}

		for _, name := range args {
			resolved, err := widgets.GetWidgetHTML(ctx, name, mode)
			if err != nil {
				return err
			}
			printResolved(name, resolved.Content, string(resolved.Source))
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("chatgpt-widgets version %s\n", version)
	},
}

func printResolved(name, content, source string) {
	logrus.WithFields(logrus.Fields{"widget": name, "source": source}).Debug("resolved")
	fmt.Printf("==> %s (%s)\n%s\n", name, source, content)
}

func setLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn", "warning":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.Fatalf("unknown log level %q", level)
	}
}

func init() {
	rootCmd.PersistentFlags().String("dir", widgets.DefaultWidgetsDir, "widgets directory to scan")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "log level: debug, info, warn, error")
	resolveCmd.Flags().String("manifest", "dist/.vite/manifest.json", "path to the Vite build manifest")

	_ = viper.BindPFlag("dir", rootCmd.PersistentFlags().Lookup("dir"))
	_ = viper.BindPFlag("loglevel", rootCmd.PersistentFlags().Lookup("loglevel"))
	_ = viper.BindPFlag("manifest", resolveCmd.Flags().Lookup("manifest"))
	viper.SetEnvPrefix("CHATGPT_WIDGETS")
	viper.AutomaticEnv()

	rootCmd.AddCommand(listCmd, htmlCmd, resolveCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
