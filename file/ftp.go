package file

import (
	"io"
	"net/textproto"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/pkg/errors"
)

// FTPFileStorage stores files on an FTP endpoint. Each operation dials a
// fresh connection and quits it when the returned reader or writer closes.
type FTPFileStorage struct {
	Addr        string
	User        string
	Password    string
	ConnTimeout time.Duration
}

func (fs *FTPFileStorage) connect() (*ftp.ServerConn, error) {
	conn, err := ftp.Dial(fs.Addr, ftp.DialWithTimeout(fs.ConnTimeout))
	if err != nil {
		return nil, errors.Wrapf(err, "dial ftp %v", fs.Addr)
	}
	if err := conn.Login(fs.User, fs.Password); err != nil {
		conn.Quit()
		return nil, errors.Wrapf(err, "ftp login %v", fs.User)
	}
	return conn, nil
}

func (fs *FTPFileStorage) Exists(fileName string) (bool, error) {
	conn, err := fs.connect()
	if err != nil {
		return false, err
	}
	defer conn.Quit()

	_, err = conn.FileSize(fileName)
	if err == nil {
		return true, nil
	}
	if e, ok := err.(*textproto.Error); ok && e.Code == ftp.StatusFileUnavailable {
		return false, nil
	}
	return false, err
}

func (fs *FTPFileStorage) Open(fileName, encoding string) (io.ReadCloser, error) {
	conn, err := fs.connect()
	if err != nil {
		return nil, err
	}
	resp, err := conn.Retr(fileName)
	if err != nil {
		conn.Quit()
		return nil, errors.Wrapf(err, "ftp retr %v", fileName)
	}
	return &ftpReader{resp: resp, conn: conn}, nil
}

func (fs *FTPFileStorage) Create(fileName, encoding string) (io.WriteCloser, error) {
	conn, err := fs.connect()
	if err != nil {
		return nil, err
	}
	pr, pw := io.Pipe()
	writer := &ftpWriter{pw: pw, conn: conn, done: make(chan error, 1)}
	go func() {
		err := conn.Stor(fileName, pr)
		// unblock pending writes when the transfer dies early
		pr.CloseWithError(err)
		writer.done <- err
	}()
	return writer, nil
}

// ftpReader closes the transfer and then the control connection.
type ftpReader struct {
	resp *ftp.Response
	conn *ftp.ServerConn
}

func (r *ftpReader) Read(p []byte) (int, error) {
	return r.resp.Read(p)
}

func (r *ftpReader) Close() error {
	err := r.resp.Close()
	if qerr := r.conn.Quit(); err == nil {
		err = qerr
	}
	return err
}

// ftpWriter feeds the upload through a pipe; Close waits for the server to
// acknowledge the stored file.
type ftpWriter struct {
	pw   *io.PipeWriter
	conn *ftp.ServerConn
	done chan error
}

func (w *ftpWriter) Write(p []byte) (int, error) {
	return w.pw.Write(p)
}

func (w *ftpWriter) Close() error {
	if err := w.pw.Close(); err != nil {
		return err
	}
	err := <-w.done
	if qerr := w.conn.Quit(); err == nil {
		err = qerr
	}
	return err
}
