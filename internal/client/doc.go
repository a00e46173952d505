// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the account server.
//
// Each subcommand (register, login, me, list, update, delete, version) maps
// to one API call made through an [adapter.ServerAdapter]; results are
// printed as indented JSON.
package client
