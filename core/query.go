package core

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"i3blk/block"
)

// Querier answers network block queries against a Netkit.
type Querier struct {
	kit Netkit
	log logrus.FieldLogger
}

func NewQuerier(kit Netkit, log logrus.FieldLogger) *Querier {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Querier{kit: kit, log: log}
}

// Query returns the block text for the first interface of the requested
// category, or block.Empty when there is none or it is not up.
func (q *Querier) Query(category Category) (string, error) {
	names, err := ListInetInterfaces(q.kit)
	if err != nil {
		return block.Empty, err
	}

	var (
		rec   InterfaceRecord
		found bool
	)
	for _, name := range names {
		cat, err := Classify(q.kit, name)
		if err != nil {
			return block.Empty, err
		}
		q.log.WithFields(logrus.Fields{"iface": name, "category": cat}).Debug("classified interface")
		if cat == category {
			rec = InterfaceRecord{Name: name, Category: cat}
			found = true
			break
		}
	}
	if !found {
		q.log.WithField("category", category).Debug("no matching interface")
		return block.Empty, nil
	}

	if err := extract(q.kit, &rec); err != nil {
		return block.Empty, err
	}

	switch category {
	case CategoryWired:
		return RenderWired(rec), nil
	case CategoryWireless:
		live, err := q.kit.Flags(rec.Name)
		if err != nil {
			return block.Empty, errors.Wrap(err, "Interface flag-check error.")
		}
		return RenderWireless(rec, live), nil
	default:
		return block.Empty, nil
	}
}

// Survey classifies and extracts every IPv4-bearing interface.
func (q *Querier) Survey() ([]InterfaceRecord, error) {
	names, err := ListInetInterfaces(q.kit)
	if err != nil {
		return nil, err
	}
	records := make([]InterfaceRecord, 0, len(names))
	for _, name := range names {
		cat, err := Classify(q.kit, name)
		if err != nil {
			return nil, err
		}
		rec := InterfaceRecord{Name: name, Category: cat}
		if err := extract(q.kit, &rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
