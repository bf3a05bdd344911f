package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"kuyumcu-backend/internal/database"
	"kuyumcu-backend/internal/models"

	"gorm.io/gorm"
)

var ErrVendorNotFound = errors.New("tedarikçi bulunamadı")

// skuPrefix: tedarikçi adının ilk 2 harfi, küçük harf.
// Tek harfli isimde ön ek tek harf kalır, reddedilmez.
func skuPrefix(firstName string) string {
	runes := []rune(strings.TrimSpace(firstName))
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToLower(string(runes))
}

// AllocateSKU - yeni ürün için SKU üretir: <önek><4 haneli sayaç>, örn. "yo0001".
// Aynı öneke sahip mevcut SKU'lar arasından string sıralamada en büyüğünün son 4
// hanesi + 1 alınır. Sıralama lexicographic olduğu için sayaç 9999'u aşınca üretilen
// SKU 5 haneye taşar ve artık desene uymaz; bu noktadan sonra aynı önekte üretim
// unique index'e takılır. Kaydı yapan taraf çakışmada AllocateSKU'yu tekrar çağırır.
func AllocateSKU(vendorID uint) (string, error) {
	var vendor models.Vendor
	if err := database.DB.First(&vendor, "id = ?", vendorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrVendorNotFound
		}
		return "", fmt.Errorf("tedarikçi sorgusu başarısız: %w", err)
	}

	prefix := skuPrefix(vendor.FirstName)
	pattern := regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + `\d{4}$`)

	var skus []string
	if err := database.DB.Model(&models.Product{}).
		Where("sku LIKE ?", prefix+"%").
		Pluck("sku", &skus).Error; err != nil {
		return "", fmt.Errorf("sku sorgusu başarısız: %w", err)
	}

	matched := make([]string, 0, len(skus))
	for _, s := range skus {
		if pattern.MatchString(s) {
			matched = append(matched, s)
		}
	}

	counter := 1
	if len(matched) > 0 {
		sort.Strings(matched)
		last := matched[len(matched)-1]
		n, err := strconv.Atoi(last[len(last)-4:])
		if err != nil {
			return "", fmt.Errorf("sku sayacı çözümlenemedi: %s", last)
		}
		counter = n + 1
	}

	return fmt.Sprintf("%s%04d", prefix, counter), nil
}
