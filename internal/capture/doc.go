// Package capture turns terminal input (chooser selections, hover over the
// drop zone, pasted paths) into a single candidate path and loads it from
// disk. It never validates media types; that belongs to the workflow.
package capture
