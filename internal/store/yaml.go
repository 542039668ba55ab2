package store

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/metal-toolbox/rackview/internal/metrics"
	"github.com/metal-toolbox/rackview/internal/model"
)

var (
	ErrYamlSource = errors.New("error in Yaml inventory")
)

// Yaml is a Repository serving the inventory document from a YAML file.
type Yaml struct {
	*MemStore

	YamlFile string
	logger   logrus.FieldLogger
}

// NewYamlInventory returns a Yaml store loaded from the given file.
//
// Inventory records the store cannot resolve are logged and skipped.
func NewYamlInventory(yamlFile string, logger logrus.FieldLogger) (*Yaml, error) {
	y := &Yaml{
		MemStore: NewMemStore(),
		YamlFile: yamlFile,
		logger:   logger,
	}

	if err := y.Reload(); err != nil {
		return nil, err
	}

	return y, nil
}

// Reload reads the inventory file and replaces the store contents.
func (y *Yaml) Reload() error {
	fh, err := os.Open(y.YamlFile)
	if err != nil {
		return errors.Wrap(ErrYamlSource, err.Error())
	}

	defer fh.Close()

	inv, err := DecodeInventory(fh)
	if err != nil {
		return err
	}

	metrics.StoreRefreshCounter.With(prometheus.Labels{"storeKind": string(model.StoreKindYaml)}).Inc()

	if err := y.Load(inv); err != nil {
		if errors.Is(err, ErrInventoryCopy) {
			return errors.Wrap(ErrYamlSource, err.Error())
		}

		y.logger.WithFields(logrus.Fields{"file": y.YamlFile, "err": err.Error()}).Warn("inventory records skipped")
	}

	return nil
}

// DecodeInventory reads a YAML inventory document.
func DecodeInventory(r io.Reader) (*model.Inventory, error) {
	inv := &model.Inventory{}

	if err := yaml.NewDecoder(r).Decode(inv); err != nil {
		if errors.Is(err, io.EOF) {
			return inv, nil
		}

		return nil, errors.Wrap(ErrYamlSource, "decode error: "+err.Error())
	}

	return inv, nil
}
