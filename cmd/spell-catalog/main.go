// Spell catalog: validates a spell table and prints one row per spell
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/lixenwraith/spellcast/config"
	"github.com/lixenwraith/spellcast/effect"
	"github.com/lixenwraith/spellcast/spell"
)

func main() {
	configPath := flag.String("config", "", "settings file (yaml, toml or json)")
	catalogPath := flag.String("catalog", "", "spell table, overrides catalog.path")
	flag.Parse()

	if err := run(os.Stdout, *configPath, *catalogPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(w io.Writer, configPath, catalogPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if catalogPath == "" {
		catalogPath = cfg.Catalog.Path
	}

	var catalog *spell.Catalog
	if catalogPath == "" {
		catalog, err = spell.DefaultCatalog()
	} else {
		catalog, err = spell.LoadCatalogFile(catalogPath)
	}
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCAST\tTRIGGER\tPROTOTYPES")
	for _, d := range catalog.All() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", d.ID, d.Name, castLabel(d), d.Trigger, prototypes(d))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%d spells\n", catalog.Len())
	return err
}

func castLabel(d *spell.Descriptor) string {
	if d.CastType == spell.Utility {
		return fmt.Sprintf("%s/%s", d.CastType, d.Utility)
	}
	return d.CastType.String()
}

// prototypes lists the non-empty effect slots as role=name
func prototypes(d *spell.Descriptor) string {
	slots := []struct {
		role  string
		proto effect.Prototype
	}{
		{"equip", d.EquipEffect},
		{"cast", d.CastEffect},
		{"hit", d.HitEffect},
		{"line", d.LineEffect},
	}
	var parts []string
	for _, s := range slots {
		if s.proto != "" {
			parts = append(parts, fmt.Sprintf("%s=%s", s.role, s.proto))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
