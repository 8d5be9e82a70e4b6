package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"nft-toolkit/core/metadata"
	"nft-toolkit/feature/collection"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import collection entries from a CSV file",
	Long:  `Replaces all entries with the rows of a CSV file. Metadata is generated right away when a template exists.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		svc, err := rt.collection(cmd.Context(), false)
		if err != nil {
			return err
		}
		result, err := svc.ImportCSV(cmd.Context(), f)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d entries with fields %v\n", result.Entries, result.Fields)
		if !result.Processed {
			fmt.Println("No template yet: run 'template generate' or 'template save' to build metadata.")
		}
		return nil
	},
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Regenerate the metadata of every entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		svc, err := rt.collection(cmd.Context(), false)
		if err != nil {
			return err
		}
		entries, err := svc.Process(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Processed %d entries\n", len(entries))
		return nil
	},
}

var rarityCmd = &cobra.Command{
	Use:   "rarity",
	Short: "Report how often each field value occurs",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		svc, err := rt.collection(cmd.Context(), false)
		if err != nil {
			return err
		}
		rarity, err := svc.Rarity(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return printJSON(rarity)
		}
		for _, field := range rarity.Fields() {
			fmt.Printf("\n=== %s ===\n", field)
			for _, vc := range rarity.Ranked(field) {
				fmt.Printf("%-30s %d\n", vc.Value, vc.Count)
			}
		}
		return nil
	},
}

var entriesCmd = &cobra.Command{
	Use:   "entries [query]",
	Short: "List entries, optionally filtered by a fuzzy query",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		svc, err := rt.collection(cmd.Context(), false)
		if err != nil {
			return err
		}
		entries, err := svc.Entries(cmd.Context(), query)
		if err != nil {
			return err
		}
		return printJSON(entries)
	},
}

var assignImagesCmd = &cobra.Command{
	Use:   "assign-images <dir|glob>",
	Short: "Attach local image files to entries by the number in each file name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		paths, err := imagePaths(args[0])
		if err != nil {
			return err
		}
		svc, err := rt.collection(cmd.Context(), false)
		if err != nil {
			return err
		}
		result, err := svc.AssignImages(cmd.Context(), paths)
		if err != nil {
			return err
		}
		fmt.Printf("Assigned %d images, skipped %d\n", len(result.Assigned), len(result.Skipped))
		return nil
	},
}

// imagePaths expands a directory to its files, or a glob to its matches.
func imagePaths(pattern string) ([]string, error) {
	if info, err := os.Stat(pattern); err == nil && info.IsDir() {
		pattern = filepath.Join(pattern, "*")
	}
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && !info.IsDir() {
			paths = append(paths, m)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload images and metadata",
}

var uploadImagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Upload every local image that has no URI yet",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpload(cmd, "images", (*collection.Service).UploadImages)
	},
}

var uploadMetadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Regenerate and upload every metadata document that has no URI yet",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		if force, _ := cmd.Flags().GetBool("force"); force {
			svc, err := rt.collection(cmd.Context(), false)
			if err != nil {
				return err
			}
			if err := svc.ClearMetadataURIs(cmd.Context()); err != nil {
				return err
			}
		}
		return runUploadWith(cmd, rt, "metadata", (*collection.Service).UploadMetadata)
	},
}

var uploadCollectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Upload the collection NFT metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		svc, err := rt.collection(cmd.Context(), true)
		if err != nil {
			return err
		}
		uri, err := svc.UploadCollectionMetadata(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(uri)
		return nil
	},
}

type uploadFunc func(*collection.Service, context.Context) (*collection.UploadReport, error)

func runUpload(cmd *cobra.Command, kind string, run uploadFunc) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()
	return runUploadWith(cmd, rt, kind, run)
}

func runUploadWith(cmd *cobra.Command, rt *runtime, kind string, run uploadFunc) error {
	startTime := time.Now()

	svc, err := rt.collection(cmd.Context(), true)
	if err != nil {
		return err
	}
	report, err := run(svc, cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("\n=== %s upload ===\n", kind)
	fmt.Printf("Pending: %d\n", report.Total)
	fmt.Printf("Uploaded: %d\n", report.Uploaded)
	fmt.Printf("Failed: %d\n", report.Failed)
	if report.Stale > 0 {
		fmt.Printf("Discarded (entry changed during upload): %d\n", report.Stale)
	}
	fmt.Printf("Execution Time: %s\n", time.Since(startTime).String())

	rt.logger.Info("Upload completed",
		zap.String("kind", kind),
		zap.Int("uploaded", report.Uploaded),
		zap.Int("failed", report.Failed),
		zap.Int("stale", report.Stale))

	if report.Failed > 0 {
		return fmt.Errorf("%d %s uploads failed; run the command again to retry", report.Failed, kind)
	}
	return nil
}

var exportCmd = &cobra.Command{
	Use:   "export <out.zip>",
	Short: "Write all generated metadata to a zip archive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		svc, err := rt.collection(cmd.Context(), false)
		if err != nil {
			return err
		}

		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		n, err := svc.Export(cmd.Context(), f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		fmt.Printf("Exported %d metadata documents to %s\n", n, args[0])
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how far the collection is along the workflow",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		svc, err := rt.collection(cmd.Context(), false)
		if err != nil {
			return err
		}
		status, err := svc.Status(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println("\n=== Collection Status ===")
		fmt.Printf("Entries: %d\n", status.Entries)
		fmt.Printf("Template: %t\n", status.HasTemplate)
		fmt.Printf("Images: %d online, %d local, %d missing\n", status.Images.Online, status.Images.Local, status.Images.Missing)
		fmt.Printf("Metadata: %d uploaded, %d pending\n", status.Metadata.Uploaded, status.Metadata.Local)
		if status.CollectionMetadataURI != "" {
			fmt.Printf("Collection NFT: %s\n", status.CollectionMetadataURI)
		}
		fmt.Printf("Ready: %t\n", status.Ready)
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all collection state",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to clear without --yes")
		}
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		svc, err := rt.collection(cmd.Context(), false)
		if err != nil {
			return err
		}
		return svc.Clear(cmd.Context())
	},
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage the metadata template",
}

var templateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved template",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		svc, err := rt.collection(cmd.Context(), false)
		if err != nil {
			return err
		}
		tmpl, err := svc.Template(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(tmpl)
	},
}

var templateSaveCmd = &cobra.Command{
	Use:   "save <template.json>",
	Short: "Validate and save a template, then regenerate all metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		svc, err := rt.collection(cmd.Context(), false)
		if err != nil {
			return err
		}
		if _, err := svc.SaveTemplate(cmd.Context(), raw); err != nil {
			return err
		}
		fmt.Println("Template saved.")
		return nil
	},
}

var templateGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build a template with one attribute per trait",
	Long: `Builds a template from flags. Each --trait is NAME or NAME=TEMPLATE;
a bare NAME is filled from the field of the same name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := metadata.DefaultTemplateParams()
		flags := cmd.Flags()
		params.Name, _ = flags.GetString("name")
		params.Description, _ = flags.GetString("description")
		params.Symbol, _ = flags.GetString("symbol")
		params.ExternalURL, _ = flags.GetString("external-url")
		params.CreatorAddress, _ = flags.GetString("creator")
		params.SellerFeeBasisPoints, _ = flags.GetInt("seller-fee")
		traits, _ := flags.GetStringSlice("trait")
		params.Traits = parseTraits(traits)

		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		svc, err := rt.collection(cmd.Context(), false)
		if err != nil {
			return err
		}
		tmpl, err := svc.GenerateTemplate(cmd.Context(), params)
		if err != nil {
			return err
		}
		return printJSON(tmpl)
	},
}

// parseTraits turns NAME or NAME=TEMPLATE flag values into traits.
func parseTraits(values []string) []metadata.Trait {
	traits := make([]metadata.Trait, 0, len(values))
	for _, v := range values {
		name, tmpl, ok := strings.Cut(v, "=")
		if !ok {
			tmpl = "$" + strings.ToUpper(name) + "$"
		}
		traits = append(traits, metadata.Trait{Name: name, TemplateValue: tmpl})
	}
	return traits
}

var traitsCmd = &cobra.Command{
	Use:   "traits",
	Short: "List the traits of the saved template",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		svc, err := rt.collection(cmd.Context(), false)
		if err != nil {
			return err
		}
		traits, err := svc.Traits(cmd.Context())
		if err != nil {
			return err
		}
		for _, t := range traits {
			fmt.Printf("%-20s %s\n", t.Name, t.TemplateValue)
		}
		return nil
	},
}

var nftCmd = &cobra.Command{
	Use:   "nft",
	Short: "Manage the collection NFT",
}

var nftGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build the collection NFT metadata",
	Long:  `Builds the collection NFT metadata. With --image the file is uploaded first and referenced as the collection image.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		var params metadata.CollectionParams
		params.Name, _ = flags.GetString("name")
		params.Symbol, _ = flags.GetString("symbol")
		params.Description, _ = flags.GetString("description")
		params.ExternalURL, _ = flags.GetString("external-url")
		params.CreatorAddress, _ = flags.GetString("creator")
		params.SellerFeeBasisPoints, _ = flags.GetInt("seller-fee")
		image, _ := flags.GetString("image")

		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		svc, err := rt.collection(cmd.Context(), image != "")
		if err != nil {
			return err
		}
		if image != "" {
			data, err := os.ReadFile(image)
			if err != nil {
				return err
			}
			params.ImageURI, params.ImageType, err = svc.UploadCollectionImage(cmd.Context(), image, data)
			if err != nil {
				return err
			}
		}

		m, err := svc.GenerateCollectionMetadata(cmd.Context(), params)
		if err != nil {
			return err
		}
		return printJSON(m)
	},
}

func init() {
	RootCmd.AddCommand(importCmd, processCmd, rarityCmd, entriesCmd, assignImagesCmd,
		uploadCmd, exportCmd, statusCmd, clearCmd, templateCmd, traitsCmd, nftCmd)
	uploadCmd.AddCommand(uploadImagesCmd, uploadMetadataCmd, uploadCollectionCmd)
	templateCmd.AddCommand(templateShowCmd, templateSaveCmd, templateGenerateCmd)
	nftCmd.AddCommand(nftGenerateCmd)

	rarityCmd.Flags().Bool("json", false, "Output the report as JSON")
	uploadMetadataCmd.Flags().Bool("force", false, "Upload every document again, even those with a URI")
	clearCmd.Flags().Bool("yes", false, "Confirm deleting all collection state")

	def := metadata.DefaultTemplateParams()
	tf := templateGenerateCmd.Flags()
	tf.String("name", def.Name, "Item name template")
	tf.String("description", def.Description, "Item description template")
	tf.String("symbol", def.Symbol, "Collection symbol")
	tf.String("external-url", def.ExternalURL, "External URL")
	tf.String("creator", "", "Creator wallet address")
	tf.Int("seller-fee", def.SellerFeeBasisPoints, "Royalty in basis points")
	tf.StringSlice("trait", nil, "Trait as NAME or NAME=TEMPLATE (repeatable)")

	nf := nftGenerateCmd.Flags()
	nf.String("name", "", "Collection name")
	nf.String("symbol", "", "Collection symbol")
	nf.String("description", "", "Collection description")
	nf.String("external-url", "", "External URL")
	nf.String("creator", "", "Creator wallet address")
	nf.Int("seller-fee", 0, "Royalty in basis points")
	nf.String("image", "", "Collection image file to upload")
}
