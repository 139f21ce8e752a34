// Copyright (c) 2025 Sqlconsole
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package messages holds the display strings used by the client. Strings are
// looked up by key from a Catalog that is loaded from a TOML language pack, so
// no user-facing text is baked into the dispatch pipeline.
package messages

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Key names a display string.
type Key string

const (
	AppTitle    Key = "appTitle"
	PromptQuery Key = "promptQuery"

	BtnSubmit    Key = "btnSubmit"
	BtnExecuting Key = "btnExecuting"
	BtnInsert    Key = "btnInsert"
	BtnInserting Key = "btnInserting"

	ResultsTitle       Key = "resultsTitle"
	InsertResultsTitle Key = "insertResultsTitle"
	ErrorTitle         Key = "errorTitle"
	LoadingTitle       Key = "loadingTitle"

	SuccessMessage Key = "successMessage"
	ErrorPrefix    Key = "errorPrefix"
	LoadingMessage Key = "loadingMessage"
	LabelSuccess   Key = "labelSuccess"

	MsgEmptyQuery           Key = "msgEmptyQuery"
	MsgDisallowedType       Key = "msgDisallowedType"
	MsgGenericQueryFailure  Key = "msgGenericQueryFailure"
	MsgGenericInsertFailure Key = "msgGenericInsertFailure"

	LabelQuery  Key = "labelQuery"
	LabelInsert Key = "labelInsert"
)

// Keys lists every key a complete language pack defines.
var Keys = []Key{
	AppTitle, PromptQuery,
	BtnSubmit, BtnExecuting, BtnInsert, BtnInserting,
	ResultsTitle, InsertResultsTitle, ErrorTitle, LoadingTitle,
	SuccessMessage, ErrorPrefix, LoadingMessage, LabelSuccess,
	MsgEmptyQuery, MsgDisallowedType, MsgGenericQueryFailure, MsgGenericInsertFailure,
	LabelQuery, LabelInsert,
}

// DefaultLanguage is always available because it is compiled in.
const DefaultLanguage = "en"

//go:embed lang/*.toml
var builtin embed.FS

// Catalog is an immutable key to string lookup table.
type Catalog struct {
	lang    string
	strings map[Key]string
}

// New builds a catalog from explicit values. Missing keys fall back to the
// key name on lookup.
func New(lang string, values map[Key]string) *Catalog {
	c := &Catalog{lang: lang, strings: make(map[Key]string, len(values))}
	for k, v := range values {
		c.strings[k] = v
	}
	return c
}

// Default returns the compiled-in English catalog.
func Default() *Catalog {
	c, err := Load(DefaultLanguage, "")
	if err != nil {
		// the embedded pack is part of the binary
		panic(fmt.Sprintf("messages: builtin language pack: %v", err))
	}
	return c
}

// Load returns the catalog for lang. The compiled-in English pack is the base;
// a builtin pack for lang is layered on top, then <dir>/<lang>.toml when dir is
// set. Keys missing from an override keep their English value.
func Load(lang, dir string) (*Catalog, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		lang = DefaultLanguage
	}

	values := make(map[Key]string, len(Keys))
	if err := decodeBuiltin(DefaultLanguage, values); err != nil {
		return nil, err
	}

	found := lang == DefaultLanguage
	if !found {
		if err := decodeBuiltin(lang, values); err == nil {
			found = true
		}
	}

	if dir != "" {
		p := filepath.Join(dir, lang+".toml")
		data, err := os.ReadFile(p)
		switch {
		case err == nil:
			if err := decode(data, values); err != nil {
				return nil, fmt.Errorf("language pack %s: %w", p, err)
			}
			found = true
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("os.ReadFile: %w", err)
		}
	}

	if !found {
		return nil, fmt.Errorf("unknown language %q", lang)
	}

	return &Catalog{lang: lang, strings: values}, nil
}

func decodeBuiltin(lang string, into map[Key]string) error {
	data, err := builtin.ReadFile("lang/" + lang + ".toml")
	if err != nil {
		return err
	}
	return decode(data, into)
}

func decode(data []byte, into map[Key]string) error {
	var raw map[string]string
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return fmt.Errorf("toml.Decode: %w", err)
	}
	for k, v := range raw {
		into[Key(k)] = v
	}
	return nil
}

// Language returns the language code the catalog was loaded for.
func (c *Catalog) Language() string {
	return c.lang
}

// Get returns the string for key, or the key itself when undefined.
func (c *Catalog) Get(key Key) string {
	if c != nil {
		if s, ok := c.strings[key]; ok {
			return s
		}
	}
	return string(key)
}

// Missing lists the keys of Keys the catalog does not define.
func (c *Catalog) Missing() []Key {
	var out []Key
	for _, k := range Keys {
		if _, ok := c.strings[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}
