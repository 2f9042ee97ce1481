// Copyright (c) 2025 Cougardb
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cougardb is the notebook interpreter for the Cougardb query service.
//
// Each paragraph is sent unmodified as the params of one JSON-RPC call to the
// configured endpoint. The answer is rendered as a "%table" grid, or as plain
// text for EXPLAIN queries. Every failure, remote or local, comes back as an
// ERROR result carrying the failure's description; nothing escapes Interpret.
//
// The interpreter is added to a host by calling Register during startup:
//
//	reg := host.NewRegistry()
//	if err := cougardb.Register(reg, cougardb.Options{Logger: log}); err != nil {
//		return err
//	}
//	session, err := reg.Open(cougardb.Group, cougardb.Name, cfg.Lookup)
package cougardb
