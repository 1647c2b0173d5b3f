package file

import (
	"github.com/pkg/errors"

	"github.com/flowutils/flowkit/serializer"
)

//DefaultEncoding encoding passed to storages by the record helpers
const DefaultEncoding = "utf-8"

// ReadRecords opens a file on the storage and decodes its records with the
// serializer method named by discriminator.
func ReadRecords(fs FileStorage, fileName, discriminator string, prototype interface{}) ([]interface{}, error) {
	method, err := serializer.GetMethod(discriminator)
	if err != nil {
		return nil, err
	}
	reader, err := fs.Open(fileName, DefaultEncoding)
	if err != nil {
		return nil, errors.Wrapf(err, "open %v", fileName)
	}
	defer reader.Close()
	return method.Read(reader, prototype)
}

// WriteRecords encodes items with the serializer method named by
// discriminator and stores them under fileName.
func WriteRecords(fs FileStorage, fileName, discriminator string, items []interface{}) error {
	method, err := serializer.GetMethod(discriminator)
	if err != nil {
		return err
	}
	writer, err := fs.Create(fileName, DefaultEncoding)
	if err != nil {
		return errors.Wrapf(err, "create %v", fileName)
	}
	if err := method.Write(writer, items); err != nil {
		writer.Close()
		return err
	}
	return writer.Close()
}
