// Package jsonl builds groups of rows from JSON Lines data. This parser uses https://github.com/tidwall/gjson to process data, and addresses group, value and count columns with gjson paths.
package jsonl
