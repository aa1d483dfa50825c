package network

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"io/ioutil"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
)

const (
	certValidFor = time.Hour * 24 * 30
	rsaBits      = 2048
)

// KeyGenerator keeps a self-signed certificate and its RSA key under
// dirPath, for serving the node API over `https://` without a CA.
type KeyGenerator struct {
	dirPath  string
	certPath string
	keyPath  string
}

// NewKeyGenerator generates the pair only when one of the two files is
// missing, so existing files are reused.
func NewKeyGenerator(dirPath, certFile, keyFile string) (*KeyGenerator, error) {
	g := &KeyGenerator{
		dirPath:  dirPath,
		certPath: filepath.Join(dirPath, certFile),
		keyPath:  filepath.Join(dirPath, keyFile),
	}

	if isFile(g.certPath) && isFile(g.keyPath) {
		return g, nil
	}

	if err := GenerateKey(g.dirPath, g.certPath, g.keyPath); err != nil {
		return nil, err
	}
	log.Debug("tls certificate generated", "cert", g.certPath, "key", g.keyPath)

	return g, nil
}

func (g *KeyGenerator) CertPath() string {
	return g.certPath
}

func (g *KeyGenerator) KeyPath() string {
	return g.keyPath
}

// Close removes both files, and dirPath too once it is empty.
func (g *KeyGenerator) Close() {
	remove(g.keyPath)
	remove(g.certPath)

	if entries, err := ioutil.ReadDir(g.dirPath); err == nil && len(entries) == 0 {
		remove(g.dirPath)
	}
}

func GenerateKey(dirPath, certPath, keyPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return errors.Wrap(err, "failed to make tls directory")
	}

	priv, err := rsa.GenerateKey(rand.Reader, rsaBits)
	if err != nil {
		return errors.Wrap(err, "failed to generate private key")
	}

	serialNumber, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return errors.Wrap(err, "failed to generate serial number")
	}

	notBefore := time.Now()
	template := x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			Organization: []string{"Self-Signed Ballot Node Certificate"},
		},
		NotBefore: notBefore,
		NotAfter:  notBefore.Add(certValidFor),

		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
		DNSNames:              []string{"localhost"},
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &priv.PublicKey, priv)
	if err != nil {
		return errors.Wrap(err, "failed to create certificate")
	}

	if err = writePEM(certPath, 0644, &pem.Block{Type: "CERTIFICATE", Bytes: der}); err != nil {
		return err
	}

	return writePEM(keyPath, 0600, &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(priv)})
}

func writePEM(path string, perm os.FileMode, block *pem.Block) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	if err = pem.Encode(f, block); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}

	return nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func remove(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return
	}

	if err := os.Remove(path); err != nil {
		log.Error("failed to remove a file", "path", path, "error", err)
	}
}
