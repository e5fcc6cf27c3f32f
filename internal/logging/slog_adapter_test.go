// Chesthound - Valheim World Save Inventory Index
// Copyright 2026 Chesthound Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/chesthound/chesthound

package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogHandlerGroupPrefixOrder(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(&SlogHandler{logger: NewTestLogger(buf)})

	logger.WithGroup("outer").WithGroup("inner").Info("grouped", "key", "v")

	out := buf.String()
	if !strings.Contains(out, `"outer.inner.key":"v"`) {
		t.Errorf("group prefix must be outermost first: %s", out)
	}
}

func TestSlogHandlerInlineGroup(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(&SlogHandler{logger: NewTestLogger(buf)})

	logger.Info("mixed",
		slog.Group("g", slog.String("a", "1")),
		slog.String("b", "2"),
	)

	out := buf.String()
	if !strings.Contains(out, `"g.a":"1"`) {
		t.Errorf("grouped attr must carry its prefix: %s", out)
	}
	if !strings.Contains(out, `"b":"2"`) || strings.Contains(out, `"g.b"`) {
		t.Errorf("sibling attr must not inherit the group prefix: %s", out)
	}
}

func TestSlogHandlerNestedGroupAttr(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(&SlogHandler{logger: NewTestLogger(buf)})

	logger.WithGroup("svc").Info("nested",
		slog.Group("g", slog.String("a", "1")),
	)

	if !strings.Contains(buf.String(), `"svc.g.a":"1"`) {
		t.Errorf("nested group must prefix outermost first: %s", buf.String())
	}
}
