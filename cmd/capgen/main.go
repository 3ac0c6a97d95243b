// capgen regenerates the shipped capability tables from capabilities.yaml.
// Run: go run ./cmd/capgen
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"

	"github.com/froque/sqlast/dialect"
)

// constNames maps dialect names to the package constants used as map keys
// in the generated table index. Names without a constant fall back to a
// string literal.
var constNames = map[string]string{
	dialect.MySQL:    "MySQL",
	dialect.Postgres: "Postgres",
	dialect.SQLite:   "SQLite",
}

func main() {
	in := flag.String("in", "dialect/capabilities.yaml", "capability table source")
	out := flag.String("out", "dialect/defaults_gen.go", "generated file target")
	flag.Parse()

	if err := run(*in, *out); err != nil {
		fmt.Fprintln(os.Stderr, "capgen:", err)
		os.Exit(1)
	}
}

func run(in, out string) error {
	cfg, err := dialect.LoadConfigFile(in)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(cfg.Dialects))
	for name := range cfg.Dialects {
		names = append(names, name)
	}
	sort.Strings(names)

	f := jen.NewFile("dialect")
	f.HeaderComment("Code generated by capgen from capabilities.yaml; DO NOT EDIT.")

	for _, name := range names {
		table, err := cfg.Table(name)
		if err != nil {
			return err
		}
		f.Var().Id(varName(name)).Op("=").Id("Table").Values(tableDict(table))
	}

	f.Var().Id("defaultTables").Op("=").Map(jen.String()).Id("Table").Values(jen.DictFunc(func(d jen.Dict) {
		for _, name := range names {
			d[keyExpr(name)] = jen.Id(varName(name))
		}
	}))

	f.Comment("DefaultTable returns the shipped capability table for a dialect name.")
	f.Func().Id("DefaultTable").Params(jen.Id("name").String()).Params(jen.Id("Table"), jen.Bool()).Block(
		jen.List(jen.Id("t"), jen.Id("ok")).Op(":=").Id("defaultTables").Index(jen.Id("name")),
		jen.Return(jen.Id("t"), jen.Id("ok")),
	)

	f.Comment("DefaultSet builds a capability set from the shipped table for the given")
	f.Comment("dialect name and server version.")
	f.Func().Id("DefaultSet").Params(
		jen.Id("name").String(),
		jen.Id("version").Id("Version"),
	).Params(jen.Op("*").Id("Set"), jen.Error()).Block(
		jen.List(jen.Id("t"), jen.Id("ok")).Op(":=").Id("defaultTables").Index(jen.Id("name")),
		jen.If(jen.Op("!").Id("ok")).Block(
			jen.Return(jen.Nil(), jen.Qual("fmt", "Errorf").Call(
				jen.Lit("dialect: no default capability table for %q"), jen.Id("name"))),
		),
		jen.Return(jen.Id("NewSet").Call(jen.Id("name"), jen.Id("version"), jen.Id("t"))),
	)

	return f.Save(out)
}

// varName derives the per-dialect table variable from the dialect name,
// e.g. "mysql" becomes mysqlDefaults and "sql-server" sqlServerDefaults.
func varName(name string) string {
	return inflect.CamelizeDownFirst(strings.ReplaceAll(name, "-", "_")) + "Defaults"
}

func keyExpr(name string) jen.Code {
	if c, ok := constNames[name]; ok {
		return jen.Id(c)
	}
	return jen.Lit(name)
}

func tableDict(t dialect.Table) jen.Dict {
	d := jen.Dict{}
	for cap, gate := range t {
		entry := jen.Dict{jen.Id("Enabled"): jen.Lit(gate.Enabled)}
		if gate.MinVersion != nil {
			entry[jen.Id("MinVersion")] = jen.Op("&").Id("Version").Values(jen.Dict{
				jen.Id("Major"): jen.Lit(gate.MinVersion.Major),
				jen.Id("Minor"): jen.Lit(gate.MinVersion.Minor),
				jen.Id("Patch"): jen.Lit(gate.MinVersion.Patch),
			})
		}
		d[jen.Lit(string(cap))] = jen.Values(entry)
	}
	return d
}
