package xmldom_test

import (
	"strings"
	"testing"

	xmldom "github.com/KimNorgaard/go-xmldom"
)

// benchmarkInput is a medium-sized document with a spread of node
// kinds, built once at init.
var benchmarkInput = func() []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n" + `<library>`)
	for i := 0; i < 200; i++ {
		b.WriteString(`<book id="b` + string(rune('a'+i%26)) + `" genre="novel">`)
		b.WriteString(`<title>Against the Day &amp; more</title>`)
		b.WriteString(`<blurb><![CDATA[1 < 2]]></blurb>`)
		b.WriteString(`<!-- stock -->`)
		b.WriteString(`</book>`)
	}
	b.WriteString(`</library>`)
	return []byte(b.String())
}()

func BenchmarkParse(b *testing.B) {
	b.ReportAllocs()
	b.SetBytes(int64(len(benchmarkInput)))
	for i := 0; i < b.N; i++ {
		if _, err := xmldom.Parse(benchmarkInput); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkWrite(b *testing.B) {
	doc, err := xmldom.Parse(benchmarkInput)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.SetBytes(int64(len(benchmarkInput)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := doc.Bytes(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFindDeep(b *testing.B) {
	doc, err := xmldom.Parse(benchmarkInput)
	if err != nil {
		b.Fatal(err)
	}
	root, _ := doc.Root()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := root.FindDeep(doc, "blurb"); !ok {
			b.Fatal("not found")
		}
	}
}
