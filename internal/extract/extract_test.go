package extract

import (
	"context"
	"reflect"
	"testing"
)

func TestJavaScriptExtract(t *testing.T) {
	content := `import React from 'react';
import { helper } from './utils';
// import ignored from './commented';
export { thing } from '../shared/thing';
const mod = require('./legacy');
/* import blocked from './blocked'; */
const lazy = () => import('./lazy');
`

	refs := NewJavaScriptExtractor().Extract(content)

	want := []RawReference{
		{Specifier: "react", Line: 1, Form: FormStatic},
		{Specifier: "./utils", Line: 2, Form: FormStatic},
		{Specifier: "../shared/thing", Line: 4, Form: FormReexport},
		{Specifier: "./legacy", Line: 5, Form: FormRequire},
		{Specifier: "./lazy", Line: 7, Form: FormDynamic},
	}
	if !reflect.DeepEqual(refs, want) {
		t.Fatalf("unexpected references:\n got %+v\nwant %+v", refs, want)
	}
}

func TestJavaScriptBlockCommentSpansLines(t *testing.T) {
	content := `/*
import hidden from './hidden';
*/
import real from './real';
`

	refs := NewJavaScriptExtractor().Extract(content)
	if len(refs) != 1 {
		t.Fatalf("expected 1 reference, got %d: %+v", len(refs), refs)
	}
	if refs[0].Specifier != "./real" || refs[0].Line != 4 {
		t.Fatalf("unexpected reference: %+v", refs[0])
	}
}

func TestPythonExtract(t *testing.T) {
	content := `import os
import json, sys
from collections import OrderedDict
from .utils import helper
from ..pkg.mod import thing
# import commented
`

	refs := NewPythonExtractor().Extract(content)

	want := []RawReference{
		{Specifier: "os", Line: 1, Form: FormStatic},
		{Specifier: "json", Line: 2, Form: FormStatic},
		{Specifier: "sys", Line: 2, Form: FormStatic},
		{Specifier: "collections", Line: 3, Form: FormStatic},
		{Specifier: "./utils", Line: 4, Form: FormStatic},
		{Specifier: "../pkg/mod", Line: 5, Form: FormStatic},
	}
	if !reflect.DeepEqual(refs, want) {
		t.Fatalf("unexpected references:\n got %+v\nwant %+v", refs, want)
	}
}

func TestGoExtractImportBlock(t *testing.T) {
	content := `package main

import (
	"fmt"
	stdstrings "strings"
)

import "os"
`

	refs := NewGoExtractor().Extract(content)

	want := []RawReference{
		{Specifier: "fmt", Line: 4, Form: FormStatic},
		{Specifier: "strings", Line: 5, Form: FormStatic},
		{Specifier: "os", Line: 8, Form: FormStatic},
	}
	if !reflect.DeepEqual(refs, want) {
		t.Fatalf("unexpected references:\n got %+v\nwant %+v", refs, want)
	}
}

func TestRubyExtract(t *testing.T) {
	content := `require 'json'
require_relative 'lib/helper'
# require 'commented'
=begin
require 'blocked'
=end
`

	refs := NewRubyExtractor().Extract(content)

	want := []RawReference{
		{Specifier: "json", Line: 1, Form: FormRequire},
		{Specifier: "./lib/helper", Line: 2, Form: FormRequire},
	}
	if !reflect.DeepEqual(refs, want) {
		t.Fatalf("unexpected references:\n got %+v\nwant %+v", refs, want)
	}
}

func TestRustExtract(t *testing.T) {
	content := `mod parser;
pub mod lexer;
use std::collections::HashMap;
`

	refs := NewRustExtractor().Extract(content)

	want := []RawReference{
		{Specifier: "./parser", Line: 1, Form: FormStatic},
		{Specifier: "./lexer", Line: 2, Form: FormStatic},
		{Specifier: "std/collections/HashMap", Line: 3, Form: FormStatic},
	}
	if !reflect.DeepEqual(refs, want) {
		t.Fatalf("unexpected references:\n got %+v\nwant %+v", refs, want)
	}
}

func TestCFamilyExtract(t *testing.T) {
	content := `#include "util.h"
#include <stdio.h>
// #include "commented.h"
`

	refs := NewCFamilyExtractor().Extract(content)

	want := []RawReference{
		{Specifier: "./util.h", Line: 1, Form: FormInclude},
		{Specifier: "stdio.h", Line: 2, Form: FormInclude},
	}
	if !reflect.DeepEqual(refs, want) {
		t.Fatalf("unexpected references:\n got %+v\nwant %+v", refs, want)
	}
}

func TestRegistryUnsupportedLanguageYieldsEmpty(t *testing.T) {
	r := NewDefaultRegistry()

	refs := r.ExtractSource(SourceFile{Path: "a.zig", Language: "zig", Content: "const x = @import(\"std\");"})
	if len(refs) != 0 {
		t.Fatalf("expected no references for unsupported language, got %+v", refs)
	}
}

func TestRegistryLanguageForFile(t *testing.T) {
	r := NewDefaultRegistry()

	cases := []struct {
		path string
		lang string
		ok   bool
	}{
		{"src/App.tsx", "javascript", true},
		{"main.py", "python", true},
		{"pkg/mod.go", "go", true},
		{"lib/task.rake", "ruby", true},
		{"notes.txt", "", false},
	}

	for _, tc := range cases {
		lang, ok := r.LanguageForFile(tc.path)
		if ok != tc.ok || lang != tc.lang {
			t.Errorf("LanguageForFile(%q) = (%q, %v), want (%q, %v)", tc.path, lang, ok, tc.lang, tc.ok)
		}
	}
}

func TestExtractAllKeepsInputOrder(t *testing.T) {
	r := NewDefaultRegistry()
	files := []SourceFile{
		{Path: "b.js", Language: "javascript", Content: "import x from './a';"},
		{Path: "a.js", Language: "javascript", Content: ""},
		{Path: "c.py", Language: "python", Content: "import os"},
	}

	out, err := r.ExtractAll(context.Background(), files)
	if err != nil {
		t.Fatalf("ExtractAll: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 results, got %d", len(out))
	}
	for i := range files {
		if out[i].File.Path != files[i].Path {
			t.Errorf("result %d is %q, want %q", i, out[i].File.Path, files[i].Path)
		}
	}
	if len(out[0].Refs) != 1 || out[0].Refs[0].Specifier != "./a" {
		t.Errorf("unexpected refs for b.js: %+v", out[0].Refs)
	}
}
