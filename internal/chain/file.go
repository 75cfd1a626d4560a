package chain

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

const tailChunk = 4096

func encodeRecord(e Entry) ([]byte, error) {
	b, err := marshalCompact(e)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func decodeRecord(line []byte, n int) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(line, &e); err != nil {
		return Entry{}, fmt.Errorf("%w: line %d: %v", ErrCorruptRecord, n, err)
	}
	return e, nil
}

// appendRecord writes one complete record with a single write on an O_APPEND
// descriptor and syncs it before returning.
func appendRecord(path string, record []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return storageError("open log for append", err)
	}
	if _, err := f.Write(record); err != nil {
		_ = f.Close()
		return storageError("write record", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return storageError("sync log", err)
	}
	if err := f.Close(); err != nil {
		return storageError("close log", err)
	}
	return nil
}

// readTip returns the last record in the file by reading backwards from the
// end, so appends stay cheap as the log grows.
func readTip(path string) (Entry, bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, storageError("open log", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Entry{}, false, storageError("stat log", err)
	}
	size := info.Size()
	if size == 0 {
		return Entry{}, false, nil
	}

	last := make([]byte, 1)
	if _, err := f.ReadAt(last, size-1); err != nil {
		return Entry{}, false, storageError("read log tail", err)
	}
	if last[0] != '\n' {
		return Entry{}, false, fmt.Errorf("%w: log ends with a partial record", ErrCorruptRecord)
	}

	line, err := lastLine(f, size-1)
	if err != nil {
		return Entry{}, false, storageError("read log tail", err)
	}
	var e Entry
	if err := json.Unmarshal(line, &e); err != nil {
		return Entry{}, false, fmt.Errorf("%w: last record: %v", ErrCorruptRecord, err)
	}
	return e, true, nil
}

// lastLine returns the bytes between the final newline before end and end.
func lastLine(f io.ReaderAt, end int64) ([]byte, error) {
	var buf []byte
	offset := end
	for offset > 0 {
		n := min(int64(tailChunk), offset)
		offset -= n
		part := make([]byte, n)
		if _, err := f.ReadAt(part, offset); err != nil {
			return nil, err
		}
		buf = append(part, buf...)
		if i := bytes.LastIndexByte(part, '\n'); i >= 0 {
			return buf[i+1:], nil
		}
	}
	return buf, nil
}

// readTail decodes the newest n records of a log holding total records,
// reading backwards from the end so the cost is bounded by n.
func readTail(path string, n, total int) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, storageError("open log", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, storageError("stat log", err)
	}

	// n records need n+1 newlines unless the read reaches the start of file.
	var buf []byte
	newlines := 0
	offset := info.Size()
	for offset > 0 && newlines <= n {
		size := min(int64(tailChunk), offset)
		offset -= size
		part := make([]byte, size)
		if _, err := f.ReadAt(part, offset); err != nil {
			return nil, storageError("read log tail", err)
		}
		newlines += bytes.Count(part, []byte{'\n'})
		buf = append(part, buf...)
	}

	lines := bytes.Split(bytes.TrimSuffix(buf, []byte{'\n'}), []byte{'\n'})
	lines = lines[len(lines)-n:]
	entries := make([]Entry, 0, n)
	first := total - n + 1
	for i, line := range lines {
		e, err := decodeRecord(line, first+i)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// countRecords counts newline-terminated records without decoding them.
func countRecords(path string) (int, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, storageError("open log", err)
	}
	defer f.Close()

	count := 0
	lastByte := byte('\n')
	buf := make([]byte, 32*1024)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			count += bytes.Count(buf[:n], []byte{'\n'})
			lastByte = buf[n-1]
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, storageError("read log", err)
		}
	}
	if lastByte != '\n' {
		return 0, fmt.Errorf("%w: log ends with a partial record", ErrCorruptRecord)
	}
	return count, nil
}

// scanRecords decodes every record in order and hands it to fn. A missing
// file is an empty log.
func scanRecords(path string, fn func(n int, e Entry) error) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return storageError("open log", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for n := 1; ; n++ {
		line, err := r.ReadBytes('\n')
		if errors.Is(err, io.EOF) {
			if len(line) > 0 {
				return fmt.Errorf("%w: line %d is a partial record", ErrCorruptRecord, n)
			}
			return nil
		}
		if err != nil {
			return storageError("read log", err)
		}
		e, err := decodeRecord(bytes.TrimSuffix(line, []byte{'\n'}), n)
		if err != nil {
			return err
		}
		if err := fn(n, e); err != nil {
			return err
		}
	}
}
