// Command k2mpackdump inspects a badger-backed persist store, printing
// every key it holds and a decode of the value: partition ownership
// bitmaps decode as roaring bitmaps, schema cache entries decode through
// mpack as catalog.Schema records, and everything else is printed as a
// raw byte count. A schema entry that fails to decode stops the dump
// with an error. It is adapted from
// multilog/roaring/badger/cmd/mbdump, keeping that tool's
// open-database/iterate-and-branch-on-key-prefix shape but pointed at
// this module's own persist.Saver keyspace instead of a margaret
// multilog's roaring-address blobs.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/sroar"
	"github.com/pkg/errors"
	"go.mindeco.de/logging"

	"github.com/ccjeff/chogori-platform/catalog"
	cdc "github.com/ccjeff/chogori-platform/codec"
	jsoncodec "github.com/ccjeff/chogori-platform/codec/json"
	"github.com/ccjeff/chogori-platform/mpack"
)

var check = logging.CheckFatal

const (
	partitionKeyPrefix = "partition:"
	schemaKeyPrefix    = "schema:"
)

// partitionEntry, schemaEntry and rawEntry are the shapes -json mode
// marshals through codec/json, giving that codec a real caller beyond
// its own round-trip test.
type partitionEntry struct {
	Key         string
	Cardinality int
	Set         string
}

type schemaEntry struct {
	Key    string
	Schema *catalog.Schema
}

type rawEntry struct {
	Key   string
	Bytes int
}

func main() {
	jsonOut := flag.Bool("json", false, "emit each entry as a JSON line instead of a human-readable summary")
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-json] <badger-dir>\n", os.Args[0])
		os.Exit(1)
	}
	logging.SetupLogging(nil)
	log := logging.Logger(os.Args[0])

	dir := flag.Arg(0)
	opts := badger.DefaultOptions(dir)

	db, err := badger.Open(opts)
	check(errors.Wrap(err, "error opening database"))
	defer db.Close()

	partitionCodec := jsoncodec.NewCodec(partitionEntry{})
	schemaCodec := jsoncodec.NewCodec(schemaEntry{})
	rawCodec := jsoncodec.NewCodec(rawEntry{})

	err = db.View(func(txn *badger.Txn) error {
		iter := txn.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		count := 0
		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			k := item.Key()
			count++

			err := item.Value(func(v []byte) error {
				switch {
				case bytes.HasPrefix(k, []byte(partitionKeyPrefix)):
					return dumpPartition(partitionCodec, *jsonOut, k, v)
				case bytes.HasPrefix(k, []byte(schemaKeyPrefix)):
					return dumpSchema(schemaCodec, *jsonOut, k, v)
				default:
					return dumpRaw(rawCodec, *jsonOut, k, v)
				}
			})
			if err != nil {
				return err
			}
		}
		log.Log("keys", count)
		return nil
	})
	check(err)
}

func dumpPartition(c cdc.Codec, asJSON bool, k, v []byte) error {
	bm := sroar.FromBuffer(v)
	e := partitionEntry{Key: string(k), Cardinality: int(bm.GetCardinality()), Set: bm.String()}
	if !asJSON {
		fmt.Printf("%s: partition bitmap, %d entries\n%s\n", e.Key, e.Cardinality, e.Set)
		return nil
	}
	return printJSON(c, e)
}

// dumpSchema decodes v as an mpack-encoded catalog.Schema, exercising
// the same mpack.NewReader path any real consumer of a persisted Schema
// record would use.
func dumpSchema(c cdc.Codec, asJSON bool, k, v []byte) error {
	var s catalog.Schema
	r := mpack.NewReader(mpack.Wrap(v))
	if err := r.Read(&s); err != nil {
		return errors.Wrapf(err, "decoding schema at key %q", k)
	}
	e := schemaEntry{Key: string(k), Schema: &s}
	if !asJSON {
		fmt.Printf("%s: schema %s v%d, %d fields\n", e.Key, s.Name, s.Version, len(s.Fields))
		return nil
	}
	return printJSON(c, e)
}

func dumpRaw(c cdc.Codec, asJSON bool, k, v []byte) error {
	e := rawEntry{Key: string(k), Bytes: len(v)}
	if !asJSON {
		fmt.Printf("%s: %d bytes\n", e.Key, e.Bytes)
		return nil
	}
	return printJSON(c, e)
}

func printJSON(c cdc.Codec, v interface{}) error {
	data, err := c.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "marshaling entry as json")
	}
	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}
